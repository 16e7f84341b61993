// Package publish renders document files and uploads the resulting pages
// to an S3 bucket, one object per document keyed by its relative path.
package publish
