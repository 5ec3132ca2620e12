// Package intake consumes storage-change notifications from SQS and
// hands the referenced objects to the consolidator, one at a time.
package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ObjectRef identifies one object named in a storage notification.
type ObjectRef struct {
	Bucket    string
	Key       string // URL-decoded object key
	EventTime string
	EventName string
}

// URI returns the object's s3:// location.
func (r ObjectRef) URI() string {
	return fmt.Sprintf("s3://%s/%s", r.Bucket, r.Key)
}

// Outcome reports what Process did with an object.
type Outcome struct {
	// Skipped is true when the object's key names no known record kind
	// and there was nothing to do.
	Skipped bool
	// Rows is the consolidated table's row count after the merge.
	Rows int
}

// Processor handles one referenced object end to end: load base,
// aggregate, merge, store.
type Processor interface {
	Process(ctx context.Context, ref ObjectRef) (Outcome, error)
}

// ParseNotification decodes an SQS message body carrying an S3 event
// notification into object references. Keys arrive URL-encoded (spaces
// as "+") and are decoded. An event with no records yields an empty
// slice; a record missing its bucket or key is an error, since the
// notification cannot be acted on.
func ParseNotification(body []byte) ([]ObjectRef, error) {
	var event struct {
		Records []struct {
			EventTime string `json:"eventTime"`
			EventName string `json:"eventName"`
			S3        struct {
				Bucket struct {
					Name string `json:"name"`
				} `json:"bucket"`
				Object struct {
					Key string `json:"key"`
				} `json:"object"`
			} `json:"s3"`
		} `json:"Records"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("parse notification body: %w", err)
	}

	refs := make([]ObjectRef, 0, len(event.Records))
	for _, rec := range event.Records {
		if rec.S3.Bucket.Name == "" || rec.S3.Object.Key == "" {
			return nil, fmt.Errorf("notification record missing bucket or key")
		}
		key, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			return nil, fmt.Errorf("decode object key %q: %w", rec.S3.Object.Key, err)
		}
		refs = append(refs, ObjectRef{
			Bucket:    rec.S3.Bucket.Name,
			Key:       key,
			EventTime: rec.EventTime,
			EventName: rec.EventName,
		})
	}
	return refs, nil
}
