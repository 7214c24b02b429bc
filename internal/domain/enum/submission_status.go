package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SubmissionStatus represents the lifecycle of a pending remote submission
type SubmissionStatus int

const (
	SubmissionStatusPending   SubmissionStatus = 0
	SubmissionStatusCompleted SubmissionStatus = 1
	SubmissionStatusFailed    SubmissionStatus = 2
	SubmissionStatusDead      SubmissionStatus = 3
)

func (s SubmissionStatus) String() string {
	names := [...]string{"Pending", "Completed", "Failed", "Dead"}
	if s < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s SubmissionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SubmissionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SubmissionStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = SubmissionStatusPending
	case "Completed":
		*s = SubmissionStatusCompleted
	case "Failed":
		*s = SubmissionStatusFailed
	case "Dead":
		*s = SubmissionStatusDead
	}
	return nil
}

func (s SubmissionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SubmissionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SubmissionStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SubmissionStatus(v)
	case int:
		*s = SubmissionStatus(v)
	}
	return nil
}
