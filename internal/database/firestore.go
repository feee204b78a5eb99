package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firestorepb "cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsNotFound reports whether a Firestore call failed because the document is absent
func IsNotFound(err error) bool {
	return err != nil && status.Code(err) == codes.NotFound
}

// Count runs a count aggregation over the query
func Count(ctx context.Context, q firestore.Query) (int64, error) {
	res, err := q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res["total"]
	if !ok {
		return 0, errors.New("count aggregation returned no result")
	}
	pv, ok := v.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result type %T", v)
	}
	return pv.GetIntegerValue(), nil
}

// ForEach iterates a document iterator until exhaustion, stopping on the first error
func ForEach(it *firestore.DocumentIterator, fn func(doc *firestore.DocumentSnapshot) error) error {
	defer it.Stop()
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
}

// DeleteAll removes every document of a collection in batches. The count
// covers only deletes the backend confirmed; the first failure is returned.
func DeleteAll(ctx context.Context, client *firestore.Client, col *firestore.CollectionRef) (int, error) {
	bw := client.BulkWriter(ctx)
	var jobs []WriteJob
	err := ForEach(col.Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
		return nil
	})
	bw.End()

	deleted, jobErr := Settle(jobs)
	if err == nil {
		err = jobErr
	}
	return deleted, err
}

// WriteJob is a queued bulk write; Results blocks until it is applied
type WriteJob interface {
	Results() (*firestore.WriteResult, error)
}

// Settle waits for every job and counts the successful ones
func Settle(jobs []WriteJob) (int, error) {
	done := 0
	var first error
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		done++
	}
	return done, first
}
