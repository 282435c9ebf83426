package errs

import (
	"errors"
	"fmt"
)

var ErrParentTraversal = errors.New("points outside of the checked directory")

type ParentTraversalError struct {
	link string
}

func NewParentTraversal(link string) ParentTraversalError {
	return ParentTraversalError{link: link}
}

func (e ParentTraversalError) Error() string {
	return fmt.Sprintf("%s. Incorrect link: '%s'",
		ErrParentTraversal.Error(), e.link)
}

func (e ParentTraversalError) Is(target error) bool { return target == ErrParentTraversal }
