package filemanager

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies filesystem failures into the small taxonomy callers act on.
type Kind int

const (
	// KindUnknown is any failure not covered by a more specific kind
	KindUnknown Kind = iota
	// KindNotFound means the path does not exist
	KindNotFound
	// KindAlreadyExists means the target path is occupied
	KindAlreadyExists
	// KindIsADirectory means a file operation was attempted on a directory
	KindIsADirectory
	// KindPermissionDenied means the OS refused access
	KindPermissionDenied
	// KindCancelled means the user dismissed a prompt
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindAlreadyExists:
		return "AlreadyExists"
	case KindIsADirectory:
		return "IsADirectory"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindCancelled:
		return "OperationCancelled"
	default:
		return "Unknown"
	}
}

// Error is the only error type returned by the adapter.
type Error struct {
	Kind Kind
	Op   string
	Path string
	// Code is the OS error name (ENOTEMPTY, EIO, ...) for KindUnknown
	Code string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case KindNotFound:
		msg = "no such file or directory"
	case KindAlreadyExists:
		msg = "already exists"
	case KindIsADirectory:
		msg = "is a directory"
	case KindPermissionDenied:
		msg = "permission denied"
	case KindCancelled:
		msg = "operation cancelled"
	default:
		if e.Err != nil {
			msg = e.Err.Error()
		}
		if e.Code != "" {
			msg = fmt.Sprintf("%s (%s)", msg, e.Code)
		}
	}
	switch {
	case e.Op != "" && e.Path != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, msg)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by kind, so errors.Is(err, ErrNotFound) holds for
// any NotFound failure regardless of op or path.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" || t.Path != "" {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrAlreadyExists    = &Error{Kind: KindAlreadyExists}
	ErrIsADirectory     = &Error{Kind: KindIsADirectory}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrCancelled        = &Error{Kind: KindCancelled}

	// ErrLockTimeout is returned when acquiring a sidecar lock times out
	ErrLockTimeout = &Error{Kind: KindUnknown, Code: "ELOCKTIMEOUT"}
)

// KindOf reports the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// normalize maps an OS error into an *Error. Already-normalized errors are
// returned unchanged so adapters can be layered.
func normalize(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	e := &Error{Op: op, Path: path, Err: err}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		e.Kind = KindNotFound
	case errors.Is(err, fs.ErrExist):
		e.Kind = KindAlreadyExists
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EPERM):
		e.Kind = KindPermissionDenied
	case errors.Is(err, syscall.EISDIR):
		e.Kind = KindIsADirectory
	default:
		e.Kind = KindUnknown
		e.Code = errnoCode(err)
	}
	return e
}

// NewError builds an adapter error for conditions detected without an OS call.
func NewError(kind Kind, op, path string) error {
	return &Error{Kind: kind, Op: op, Path: path}
}
