// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"bufio"
	"errors"
	"io"
	"mime"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"gocloud.dev/blob"
)

const sniffLen = 3072

// writerOptions derives the content type from the key extension and falls back to sniffing head.
func writerOptions(key string, head []byte) *blob.WriterOptions {
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = mimetype.Detect(head).String()
	}

	return &blob.WriterOptions{ContentType: contentType}
}

// peekHead returns a reader equivalent to r together with up to sniffLen leading bytes of it.
func peekHead(r io.Reader) (io.Reader, []byte, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}

	return br, head, nil
}

// readHead reads up to sniffLen bytes from the start of rs and rewinds it.
func readHead(rs io.ReadSeeker) ([]byte, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rs, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	return head[:n], nil
}
