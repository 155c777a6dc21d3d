package uploader

import "io"

// ProgressFunc receives upload progress as an integer percent in [0,100].
// It is side-effect-only: returning never influences the transfer. Values are
// monotonically non-decreasing within one transport attempt and reset to 0 when
// the orchestrator starts the fallback attempt.
type ProgressFunc func(percent int)

// progressReader counts bytes as they leave the client and reports percent
// against the declared total. It caps at 99 while streaming; 100 is reported
// only via finish, after the server acknowledged the transfer.
type progressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	last   int
	report ProgressFunc
}

func newProgressReader(r io.Reader, total int64, report ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, report: report}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.report != nil && p.total > 0 {
		p.sent += int64(n)
		pct := int(p.sent * 100 / p.total)
		if pct > 99 {
			pct = 99
		}
		if pct > p.last {
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}

func (p *progressReader) finish() {
	if p.report != nil && p.last < 100 {
		p.last = 100
		p.report(100)
	}
}
