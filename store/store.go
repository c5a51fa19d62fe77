// Package store persists runs and their per-generation reports in a bolt database.
package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Morenim/bitga/ga"
)

const (
	RunBucket    = "RunBucket"
	ReportBucket = "ReportBucket"
)

var (
	buckets = []string{RunBucket, ReportBucket}

	ErrUnknownRun = errors.New("store: unknown run")
)

// Run describes one optimization run.
type Run struct {
	ID         string
	Problem    string
	Config     ga.Config
	StartedAt  time.Time
	FinishedAt time.Time
	Final      ga.Report
}

// NewRun returns a run with a fresh id, started now.
func NewRun(problem string, config ga.Config) Run {
	return Run{
		ID:        uuid.NewString(),
		Problem:   problem,
		Config:    config,
		StartedAt: time.Now().UTC(),
	}
}

type Client struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Client, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return errors.Wrapf(err, "create bucket %s", bucket)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Client{db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

// SaveRun creates or replaces the record of run.
func (c *Client) SaveRun(run Run) error {
	value, err := encode(run)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(RunBucket)).Put([]byte(run.ID), value)
	})
}

// GetRun returns the record of the run with id.
func (c *Client) GetRun(id string) (Run, error) {
	var run Run
	err := c.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(RunBucket)).Get([]byte(id))
		if value == nil {
			return errors.Wrapf(ErrUnknownRun, "%q", id)
		}
		return decode(value, &run)
	})
	return run, err
}

// AppendReport stores the report of one generation of the run with id.
func (c *Client) AppendReport(id string, report ga.Report) error {
	value, err := encode(report)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket([]byte(ReportBucket)).CreateBucketIfNotExists([]byte(id))
		if err != nil {
			return errors.Wrapf(err, "store: create report bucket for %s", id)
		}
		return b.Put(itob(uint64(report.Generation)), value)
	})
}

// Reports returns the stored reports of the run with id in generation order.
func (c *Client) Reports(id string) ([]ga.Report, error) {
	var reports []ga.Report
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(ReportBucket)).Bucket([]byte(id))
		if b == nil {
			return errors.Wrapf(ErrUnknownRun, "%q", id)
		}
		return b.ForEach(func(_, value []byte) error {
			var r ga.Report
			if err := decode(value, &r); err != nil {
				return err
			}
			reports = append(reports, r)
			return nil
		})
	})
	return reports, err
}

// LastGeneration returns the highest stored generation of the run with id,
// 0 when it has no reports yet.
func (c *Client) LastGeneration(id string) (int, error) {
	var last uint64
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(ReportBucket)).Bucket([]byte(id))
		if b == nil {
			return nil
		}
		if k, _ := b.Cursor().Last(); k != nil {
			last = btoi(k)
		}
		return nil
	})
	return int(last), err
}

// Reporter returns a ga.Reporter appending every report to the run with id.
func (c *Client) Reporter(id string) ga.Reporter {
	return func(r ga.Report) error {
		return c.AppendReport(id, r)
	}
}

func encode(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return nil, errors.Wrap(err, "store: encode")
	}
	return buf.Bytes(), nil
}

func decode(value []byte, v interface{}) error {
	return errors.Wrap(gob.NewDecoder(bytes.NewReader(value)).Decode(v), "store: decode")
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
