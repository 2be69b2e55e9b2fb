// Package trigger turns clipboard changes into relay invocations.
//
// Poller reads a ClipboardHost on an interval and fires when the content
// fingerprint changes. SpoolWatcher uses fsnotify to pick up item files a
// clipboard manager drops into a directory. Both hand items to a Sink,
// normally a dispatcher, and never wait for the upload.
package trigger
