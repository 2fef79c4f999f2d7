// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP decorators wrapped around every Vidtube route.

Order matters and is fixed by the api package:

	RequestID → StructuredLogger → PanicRecovery → CORS → RateLimit → Deadline

Route-level authentication lives in authz.go and is applied per route group,
never globally, because most read endpoints accept anonymous viewers.
*/
package middleware
