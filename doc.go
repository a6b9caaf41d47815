// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package abcjit compiles AVM2 method bodies on their first call.

A method is translated into backend IR which calls the same helper routines
as the interpreter in the vm package, so compiled and interpreted frames share
the object model and the call context.  Methods which contain opcodes without
a translation are interpreted.

See the Engine.Compile method's source code for an example of how to use the
low-level APIs (implemented in internal subpackages).

# Errors

Method errors are accessible via errors subpackage.  They are recorded in the
Compiled result of a method which is interpreted instead of compiled, and
returned by calls to methods whose code is malformed.  An uncaught script
exception is returned as *vm.Exception.  Internal compiler errors are not
recovered.
*/
package abcjit
