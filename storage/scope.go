package storage

import (
	"errors"
	"io"
)

// Use opens a resource, hands it to fn and closes it on every exit path.
// A close error is joined with fn's error so neither is lost.
func Use[T io.Closer](open func() (T, error), fn func(T) error) (err error) {
	res, err := open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := res.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	return fn(res)
}
