package store

// StorageError is a durability or driver failure. It is fatal to the
// triggering call and always surfaced; a missing update/delete target is
// reported as an affected count of zero instead.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
