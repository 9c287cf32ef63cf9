package antivirus

import (
	"context"
	"errors"
)

// ErrInfected is returned when a scanner flags the content.
var ErrInfected = errors.New("antivirus: malware detected")

// Verdict is the outcome of one scan.
type Verdict struct {
	Clean   bool
	Threat  string // signature name when not clean
	Scanner string
}

// Scanner inspects uploaded bytes. An error means no verdict could be reached;
// callers reject the upload in that case.
type Scanner interface {
	Scan(ctx context.Context, data []byte) (Verdict, error)
	Name() string
}

// NoOp accepts everything. It is used when no clamd address is configured.
type NoOp struct{}

func (NoOp) Scan(context.Context, []byte) (Verdict, error) {
	return Verdict{Clean: true, Scanner: "noop"}, nil
}

func (NoOp) Name() string { return "noop" }

// Check runs s and folds the verdict into an error: nil when clean,
// ErrInfected (wrapped with the threat name) when not.
func Check(ctx context.Context, s Scanner, data []byte) error {
	if s == nil {
		return nil
	}
	v, err := s.Scan(ctx, data)
	if err != nil {
		return err
	}
	if !v.Clean {
		return errors.Join(ErrInfected, errors.New(v.Threat))
	}
	return nil
}
