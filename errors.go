package suzuri

import "errors"

// ErrCacheUninitialized is returned by nothing directly — Session
// methods that would need it instead log a warning and no-op, per the
// engine's reports-by-omission error policy — but is exported so
// callers building their own session-equivalent wrapper can reuse it.
var ErrCacheUninitialized = errors.New("suzuri: cache used before its renderer was initialized")
