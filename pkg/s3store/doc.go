// Package s3store implements pkg/store.Store against AWS S3 using
// github.com/aws/aws-sdk-go. It is the concrete object-storage plug-in
// a repository is normally backed by; nothing above pkg/store needs to
// change to swap this for pkg/store.LocalDisk.
package s3store
