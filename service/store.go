package service

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"
)

//Store holds a resource collection as an opaque JSON array payload
type Store struct {
	mux     sync.RWMutex
	payload []byte
	size    int
}

//Payload returns the current JSON array payload
func (s *Store) Payload() []byte {
	s.mux.RLock()
	defer s.mux.RUnlock()
	result := make([]byte, len(s.payload))
	copy(result, s.payload)
	return result
}

//Size returns item count
func (s *Store) Size() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.size
}

//Append adds an encoded item to the collection
func (s *Store) Append(item []byte) {
	s.mux.Lock()
	defer s.mux.Unlock()
	var buffer bytes.Buffer
	buffer.Write(s.payload[:len(s.payload)-1])
	if s.size > 0 {
		buffer.WriteByte(',')
	}
	buffer.Write(item)
	buffer.WriteByte(']')
	s.payload = buffer.Bytes()
	s.size++
}

//Replace swaps the whole payload, supplied data has to be a JSON array
func (s *Store) Replace(payload []byte) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return errors.Errorf("invalid payload: expected JSON array, but had: %s", trimmed)
	}
	size := countElements(trimmed[1 : len(trimmed)-1])
	s.mux.Lock()
	defer s.mux.Unlock()
	s.payload = trimmed
	s.size = size
	return nil
}

//countElements counts top level elements of a JSON array body,
//commas inside strings or nested values do not separate elements
func countElements(data []byte) int {
	if len(bytes.TrimSpace(data)) == 0 {
		return 0
	}
	count := 1
	depth := 0
	inString := false
	escaped := false
	for _, b := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case ',':
			if depth == 0 {
				count++
			}
		}
	}
	return count
}

//NewStore creates a store seeded with encoded items
func NewStore(items ...[]byte) *Store {
	result := &Store{payload: []byte("[]")}
	for _, item := range items {
		result.Append(item)
	}
	return result
}
