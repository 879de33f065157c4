package application

import "errors"

var ErrNoSnapshot = errors.New("no session snapshot")
var ErrCorruptSnapshot = errors.New("corrupt session snapshot")
