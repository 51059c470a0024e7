package arcdata

import "log"

// Store hands out the parsed document to request handlers. The two
// implementations trade freshness for cost: CachedStore parses once at
// startup, FileStore re-reads the file on every call.
type Store interface {
	Document() (*Document, error)
}

// CachedStore serves one immutable document for the life of the process.
// The document is never written after construction, so concurrent readers
// need no locking; editing the data file requires a restart.
type CachedStore struct {
	doc *Document
}

// NewCachedStore loads the dataset once. The process should not start
// without data, so callers treat a load failure here as fatal.
func NewCachedStore(path string) (*CachedStore, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	log.Printf("[Store] Loaded %d arcs with strategy data, %d roster entries from %s",
		len(doc.Arcs), len(doc.ArcList), path)
	return &CachedStore{doc: doc}, nil
}

// Document returns the cached document.
func (s *CachedStore) Document() (*Document, error) {
	return s.doc, nil
}

// FileStore re-reads the dataset on every request so edits show up
// without a restart. Meant for working on the data file locally.
type FileStore struct {
	path string
}

// NewFileStore returns a store reading from path on each call.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Document loads the file fresh. Errors surface per request rather than
// at startup.
func (s *FileStore) Document() (*Document, error) {
	return Load(s.path)
}
