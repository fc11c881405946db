// Package content holds the body and media-type codecs applied to responses:
// one-shot gzip compression, Content-Type parsing and charset decoding.
package content
