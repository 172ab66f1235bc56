package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JsonlStorage appends fee quotes to a JSONL file, one quote per line. The
// file is opened on the first batch and stays open until Close; every batch
// is flushed before PutQuoteBatch returns.
type JsonlStorage struct {
	path string

	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	enc    *json.Encoder
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutQuoteBatch appends quotes. On an encode error the buffered part of the
// batch is discarded.
func (s *JsonlStorage) PutQuoteBatch(quotes []FeeQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return err
	}
	for _, quote := range quotes {
		if err := s.enc.Encode(quote); err != nil {
			s.writer.Reset(s.file)
			return fmt.Errorf("encode quote %s %s->%s: %w", quote.PoolAddress, quote.AssetIn, quote.AssetOut, err)
		}
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("flush quotes: %w", err)
	}
	return nil
}

// Close flushes and closes the file. The storage reopens it on the next batch.
func (s *JsonlStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	flushErr := s.writer.Flush()
	closeErr := s.file.Close()
	s.file, s.writer, s.enc = nil, nil, nil
	if flushErr != nil {
		return fmt.Errorf("flush quotes: %w", flushErr)
	}
	return closeErr
}

func (s *JsonlStorage) open() error {
	if s.file != nil {
		return nil
	}
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create quote dir: %w", err)
		}
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open quote file: %w", err)
	}
	s.file = file
	s.writer = bufio.NewWriter(file)
	s.enc = json.NewEncoder(s.writer)
	return nil
}
