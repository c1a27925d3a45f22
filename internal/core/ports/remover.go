package ports

// Remover is the deletion executor boundary. Implementations either report
// the path (dry run) or irreversibly remove it.
//
// Contract for real removal: a path that is already gone is success, not an
// error; plain files are deleted in place, retrying once after clearing a
// read-only attribute; directories are relocated into a fresh holding area
// by rename, never deleted in place, so a concurrent scan can never observe
// a half-deleted directory. Renaming across filesystems is an error for
// that item.
//
// Errors are per-item: callers report them and keep sweeping.
//
//go:generate go run go.uber.org/mock/mockgen -source=remover.go -destination=mocks/mock_remover.go -package=mocks
type Remover interface {
	Remove(path string) error
}
