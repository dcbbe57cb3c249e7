package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeTaskToken creates a base64 token from the last task of a page. A nil
// date is encoded as an empty field.
func EncodeTaskToken(date *time.Time, taskID int64) string {
	dateStr := ""
	if date != nil {
		dateStr = date.UTC().Format(timeFormat)
	}
	tokenStr := fmt.Sprintf("%s|%d", dateStr, taskID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeTaskToken parses a token from EncodeTaskToken.
func DecodeTaskToken(token string) (*time.Time, int64, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return nil, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	var date *time.Time
	if parts[0] != "" {
		d, err := time.Parse(timeFormat, parts[0])
		if err != nil {
			return nil, 0, fmt.Errorf("invalid pagination token format (date parse): %w", err)
		}
		date = &d
	}

	taskID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || taskID <= 0 {
		return nil, 0, fmt.Errorf("invalid pagination token format (id parse)")
	}

	return date, taskID, nil
}
