package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTimeRecordsStatus(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	if got := RequestID(ctx); got != "abc" {
		t.Fatalf("RequestID = %q, want abc", got)
	}

	okBefore := testutil.CollectAndCount(ExternalCallDuration)

	var err error
	Time(ctx, "test.ok")(&err)

	failed := errors.New("boom")
	Time(ctx, "test.err")(&failed)

	if got := testutil.CollectAndCount(ExternalCallDuration); got != okBefore+2 {
		t.Fatalf("series count = %d, want %d", got, okBefore+2)
	}
}
