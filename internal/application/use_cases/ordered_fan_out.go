package use_cases

import (
	"context"

	apperrors "nftmarket/internal/shared_kernel/errors"

	"golang.org/x/sync/errgroup"
)

type orderedResult[T any] struct {
	value T
	err   *apperrors.AppError
}

// fanOutOrdered calls fn for every input with at most limit calls in flight. Each result is
// written to the slot of its input, so the returned slice keeps input order regardless of
// completion order. With stopOnError the first failure cancels the remaining calls and is
// returned; otherwise only context cancellation produces an error.
func fanOutOrdered[In, Out any](
	ctx context.Context,
	limit int,
	inputs []In,
	stopOnError bool,
	fn func(ctx context.Context, input In) (Out, *apperrors.AppError),
) ([]orderedResult[Out], error) {
	results := make([]orderedResult[Out], len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}

	for index, input := range inputs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			value, appErr := fn(groupCtx, input)
			results[index] = orderedResult[Out]{value: value, err: appErr}
			if appErr != nil && stopOnError {
				return appErr
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}

	return results, nil
}
