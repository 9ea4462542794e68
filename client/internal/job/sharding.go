package job

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// ShardLabel hashes a lecture id to a stable small cardinality label (0-15)
// for metrics.
func ShardLabel(lectureID int64) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(lectureID, 10)))
	return fmt.Sprintf("%d", h.Sum32()%16)
}
