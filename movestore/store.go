// Package movestore persists an optimal move table in badger so heuristic
// players can look moves up without rebuilding the solver's trie.
package movestore

import (
	"encoding/binary"
	"fmt"

	"snakeoracle/graph"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Table is anything that can list (configuration, target) -> next cell.
type Table interface {
	MoveTable(fn func(snake []graph.Vertex, apple, next graph.Vertex) bool)
}

type Store struct {
	db *badger.DB
}

// zerologAdapter routes badger's own messages through the global logger.
type zerologAdapter struct{}

func (zerologAdapter) Errorf(format string, args ...interface{}) {
	log.Error().Str("component", "badger").Msg(fmt.Sprintf(format, args...))
}

func (zerologAdapter) Warningf(format string, args ...interface{}) {
	log.Warn().Str("component", "badger").Msg(fmt.Sprintf(format, args...))
}

func (zerologAdapter) Infof(format string, args ...interface{}) {
	log.Debug().Str("component", "badger").Msg(fmt.Sprintf(format, args...))
}

func (zerologAdapter) Debugf(format string, args ...interface{}) {
	log.Trace().Str("component", "badger").Msg(fmt.Sprintf(format, args...))
}

// Open opens or creates a store in dir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("move store directory is required")
	}
	opts := badger.DefaultOptions(dir).
		WithNumVersionsToKeep(1).
		WithLogger(zerologAdapter{})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open move store at %s", dir)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open in-memory move store")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return errors.Wrap(s.db.Close(), "close move store")
}

// key encodes the configuration length, its cells tail first, then the
// target, all as uvarints. The length prefix keeps keys prefix-free.
func key(snake []graph.Vertex, apple graph.Vertex) []byte {
	buf := make([]byte, 0, (len(snake)+2)*binary.MaxVarintLen16)
	buf = binary.AppendUvarint(buf, uint64(len(snake)))
	for _, v := range snake {
		buf = binary.AppendUvarint(buf, uint64(v))
	}
	return binary.AppendUvarint(buf, uint64(apple))
}

// Save writes every entry of the table in one batch and returns how many
// entries were written.
func (s *Store) Save(table Table) (int, error) {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	var err error
	count := 0
	table.MoveTable(func(snake []graph.Vertex, apple, next graph.Vertex) bool {
		value := binary.AppendUvarint(nil, uint64(next))
		if err = wb.Set(key(snake, apple), value); err != nil {
			return false
		}
		count++
		return true
	})
	if err != nil {
		return 0, errors.Wrap(err, "write move batch")
	}
	if err = wb.Flush(); err != nil {
		return 0, errors.Wrap(err, "flush move batch")
	}
	log.Info().Int("entries", count).Msg("move table saved")
	return count, nil
}

// Lookup returns the next head cell for a configuration, tail first, and a
// target. ok is false when the store has no such entry.
func (s *Store) Lookup(snake []graph.Vertex, apple graph.Vertex) (next graph.Vertex, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(snake, apple))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v, n := binary.Uvarint(val)
			if n <= 0 {
				return errors.Errorf("corrupt move value %x", val)
			}
			next, ok = graph.Vertex(v), true
			return nil
		})
	})
	if err != nil {
		return 0, false, errors.Wrap(err, "lookup move")
	}
	return next, ok, nil
}

// Len counts the stored entries.
func (s *Store) Len() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, errors.Wrap(err, "count moves")
}
