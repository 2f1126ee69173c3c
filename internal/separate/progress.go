package separate

import "io"

// progressReader counts bytes read from the underlying reader and reports
// (loaded, total) after each read. The transport drains the request body
// sequentially, so events arrive in non-decreasing byte order.
type progressReader struct {
	reader     io.Reader
	total      int64
	loaded     int64
	onProgress func(loaded, total int64)
}

func newProgressReader(r io.Reader, total int64, onProgress func(loaded, total int64)) *progressReader {
	return &progressReader{
		reader:     r,
		total:      total,
		onProgress: onProgress,
	}
}

// Read implements io.Reader
func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.loaded += int64(n)
		if pr.onProgress != nil {
			pr.onProgress(pr.loaded, pr.total)
		}
	}
	return n, err
}
