package domain

import "errors"

var (
	// ErrLoad signals that the corpus could not be decoded into records.
	ErrLoad = errors.New("corpus load failed")
	// ErrIndexBuild signals that no usable vocabulary could be formed.
	ErrIndexBuild = errors.New("index build failed")
	// ErrInvalidQuery signals a query that is not valid UTF-8 text.
	ErrInvalidQuery = errors.New("invalid query")
)
