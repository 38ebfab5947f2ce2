package errors

import "errors"

// ErrKeyGeneration is returned when a private key could not be generated.
var ErrKeyGeneration = errors.New("key generation failed")

// ErrRequest is returned when a certificate signing request could not be built.
var ErrRequest = errors.New("certificate request failed")

// ErrSigning is returned when a certificate could not be issued or signed.
var ErrSigning = errors.New("certificate signing failed")

// ErrPackaging is returned when a team bundle could not be assembled.
var ErrPackaging = errors.New("bundle packaging failed")

// ErrFilesystem is returned when a directory or file could not be created.
var ErrFilesystem = errors.New("filesystem operation failed")

// ErrIncorrectInput is returned when the user input is incorrect.
var ErrIncorrectInput = errors.New("incorrect input")
