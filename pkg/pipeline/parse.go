package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/circmark/circmark/pkg/circuit"
	apperrors "github.com/circmark/circmark/pkg/errors"
	"github.com/circmark/circmark/pkg/observability"
)

// Parse turns circmark notation into a topology tree, mapping parser errors
// onto the structured error codes the CLI and API report.
func Parse(ctx context.Context, source string) (circuit.Node, error) {
	observability.Pipeline().OnParseStart(ctx, source)
	start := time.Now()

	doc, err := circuit.Parse(source)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, source, 0, time.Since(start), err)
		return nil, wrapParseError(err)
	}

	observability.Pipeline().OnParseComplete(ctx, source, circuit.CountElements(doc), time.Since(start), nil)
	return doc, nil
}

// wrapParseError maps lexer and parser errors onto structured codes. The
// position-carrying message becomes the structured message so UserMessage
// surfaces it to CLI and API clients unchanged.
func wrapParseError(err error) error {
	var lexErr *circuit.LexError
	if errors.As(err, &lexErr) {
		return apperrors.New(apperrors.ErrCodeInvalidCharacter, "%s", lexErr.Error())
	}
	var synErr *circuit.SyntaxError
	if errors.As(err, &synErr) {
		return apperrors.New(apperrors.ErrCodeInvalidSyntax, "%s", synErr.Error())
	}
	return apperrors.Wrap(apperrors.ErrCodeInternal, err, "parse source")
}
