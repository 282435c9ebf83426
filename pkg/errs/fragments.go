package errs

import (
	"errors"
	"fmt"
)

var ErrEmptyFragment = errors.New("empty fragment (./file.md#)")
var ErrFragmentOnDir = errors.New("points to a dir but contains a fragment (./dir#section)")
var ErrMissingFragment = errors.New("no heading matches the fragment")

type EmptyFragmentError struct {
	link string
}

func NewEmptyFragment(link string) EmptyFragmentError {
	return EmptyFragmentError{link: link}
}

func (e EmptyFragmentError) Error() string {
	return fmt.Sprintf("%s. Incorrect link: '%s'",
		ErrEmptyFragment.Error(), e.link)
}

func (e EmptyFragmentError) Is(target error) bool { return target == ErrEmptyFragment }

type FragmentOnDirError struct {
	link string
}

func NewFragmentOnDir(link string) FragmentOnDirError {
	return FragmentOnDirError{link: link}
}

func (e FragmentOnDirError) Error() string {
	return fmt.Sprintf("%s. Incorrect link: '%s'",
		ErrFragmentOnDir.Error(), e.link)
}

func (e FragmentOnDirError) Is(target error) bool { return target == ErrFragmentOnDir }

type MissingFragmentError struct {
	link     string
	fragment string
}

func NewMissingFragment(link, fragment string) MissingFragmentError {
	return MissingFragmentError{link: link, fragment: fragment}
}

func (e MissingFragmentError) Error() string {
	return fmt.Sprintf("no heading matches '#%s'. Incorrect link: '%s'",
		e.fragment, e.link)
}

func (e MissingFragmentError) Is(target error) bool { return target == ErrMissingFragment }
