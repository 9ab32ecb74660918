package service

import "errors"

// Common service errors
var (
	ErrNoCategories    = errors.New("no categories")
	ErrEmptyPage       = errors.New("page has no questions")
	ErrEmptySearchTerm = errors.New("search term is empty")
)
