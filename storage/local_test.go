package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	disk := NewLocal(t.TempDir())

	require.NoError(t, disk.Put(ctx, "receipts/2026/BILL-1.txt", []byte("total 1430.00")))
	data, err := disk.Get(ctx, "receipts/2026/BILL-1.txt")
	require.NoError(t, err)
	assert.Equal(t, "total 1430.00", string(data))
	assert.True(t, strings.HasSuffix(disk.URL("receipts/2026/BILL-1.txt"), "/receipts/2026/BILL-1.txt"))

	require.NoError(t, disk.Delete(ctx, "receipts/2026/BILL-1.txt"))
	require.NoError(t, disk.Delete(ctx, "receipts/2026/BILL-1.txt"))
	_, err = disk.Get(ctx, "receipts/2026/BILL-1.txt")
	assert.Error(t, err)
}

func TestOpenRejectsUnknownDisk(t *testing.T) {
	t.Setenv("RECEIPT_DISK", "floppy")
	_, err := Open(context.Background())
	assert.Error(t, err)
}
