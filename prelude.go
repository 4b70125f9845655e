// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import _ "embed"

//go:embed prelude.lumen
var preludeSource string
