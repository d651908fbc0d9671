package report

import "errors"

var ErrArchivedNotFound = errors.New("archived report not found")
