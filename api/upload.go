package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
)

// doMultipart sends a single file as a multipart/form-data request under the
// given form field. The part content type is sniffed from the first bytes of
// the file, the way a browser would fill it in.
func (c *Client) doMultipart(ctx context.Context, method, path, bearer, field, filename string, file io.Reader, result any) error {
	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("failed to read file: %w", err)
	}
	sniff = sniff[:n]

	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%s; filename=%s`, strconv.Quote(field), strconv.Quote(filename)))
	h.Set("Content-Type", http.DetectContentType(sniff))

	part, err := writer.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(sniff); err != nil {
		return fmt.Errorf("failed to write form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, bearer, result)
}
