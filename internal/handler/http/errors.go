// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrNoAccessTokenCookie is returned by the session middleware when the
// incoming request carries no access token cookie (or an empty one).
// Callers can match against it with [errors.Is].
var ErrNoAccessTokenCookie = errors.New("missing `access_token` cookie")
