package winfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HecaiYuan/crossfs/internal/encoding"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// TestEnumerate_Success tests a full enumeration in native order, with the
// self and parent entries suppressed.
func TestEnumerate_Success(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	mockOps.On("FindFirstFile", u16(t, `C:\data\*`)).Return(FindHandle(1), entry(t, "."), nil)
	mockOps.On("FindNextFile", FindHandle(1)).Return(entry(t, ".."), nil).Once()
	mockOps.On("FindNextFile", FindHandle(1)).Return(entry(t, "alpha.txt"), nil).Once()
	mockOps.On("FindNextFile", FindHandle(1)).Return(entry(t, "beta"), nil).Once()
	mockOps.On("FindNextFile", FindHandle(1)).Return(FindData{}, ErrnoNoMoreFiles).Once()
	mockOps.On("FindClose", FindHandle(1)).Return(nil)

	var dirs, names []string
	err := h.Enumerate(t.Context(), `C:\data`, func(dir, name string) schema.EnumerationResult {
		dirs = append(dirs, dir)
		names = append(names, name)

		return schema.EnumContinue
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.txt", "beta"}, names)
	assert.Equal(t, []string{`C:\data`, `C:\data`}, dirs)

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Success_Stop tests graceful early termination, with the
// listing handle still closed.
func TestEnumerate_Success_Stop(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	mockOps.On("FindFirstFile", u16(t, `C:\data\*`)).Return(FindHandle(2), entry(t, "first"), nil)
	mockOps.On("FindClose", FindHandle(2)).Return(nil)

	calls := 0
	err := h.Enumerate(t.Context(), `C:\data`, func(dir, name string) schema.EnumerationResult {
		calls++

		return schema.EnumStop
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Success_EmptyDirectory tests a directory containing only the
// self and parent entries.
func TestEnumerate_Success_EmptyDirectory(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	mockOps.On("FindFirstFile", u16(t, `C:\empty\*`)).Return(FindHandle(3), entry(t, "."), nil)
	mockOps.On("FindNextFile", FindHandle(3)).Return(entry(t, ".."), nil).Once()
	mockOps.On("FindNextFile", FindHandle(3)).Return(FindData{}, ErrnoNoMoreFiles).Once()
	mockOps.On("FindClose", FindHandle(3)).Return(nil)

	err := h.Enumerate(t.Context(), `C:\empty`, func(dir, name string) schema.EnumerationResult {
		t.Errorf("callback invoked for %q, want no entries", name)

		return schema.EnumContinue
	})

	require.NoError(t, err)

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Fail_CallbackAbort tests the callback signaling failure.
func TestEnumerate_Fail_CallbackAbort(t *testing.T) {
	t.Parallel()

	h, mockOps, sink := newTestHandler()

	mockOps.On("FindFirstFile", u16(t, `C:\data\*`)).Return(FindHandle(4), entry(t, "first"), nil)
	mockOps.On("FindClose", FindHandle(4)).Return(nil)

	err := h.Enumerate(t.Context(), `C:\data`, func(dir, name string) schema.EnumerationResult {
		return schema.EnumFailure
	})

	require.Error(t, err)
	require.ErrorIs(t, err, schema.ErrCallbackAborted)
	require.ErrorIs(t, sink.Err(), schema.ErrCallbackAborted)

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Fail_OpenListing tests a nonexistent directory being an
// error, never an empty success.
func TestEnumerate_Fail_OpenListing(t *testing.T) {
	t.Parallel()

	h, mockOps, sink := newTestHandler()

	mockOps.On("FindFirstFile", u16(t, `C:\missing\*`)).Return(FindHandle(0), FindData{}, ErrnoPathNotFound)

	err := h.Enumerate(t.Context(), `C:\missing`, func(dir, name string) schema.EnumerationResult {
		return schema.EnumContinue
	})

	require.Error(t, err)
	require.ErrorIs(t, err, ErrnoPathNotFound)
	assert.NotEmpty(t, sink.Message())

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Fail_UndecodableName tests that one undecodable entry name
// fails the whole enumeration instead of being skipped.
func TestEnumerate_Fail_UndecodableName(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	mockOps.On("FindFirstFile", u16(t, `C:\data\*`)).
		Return(FindHandle(5), FindData{FileName: []uint16{0xD800}}, nil)
	mockOps.On("FindClose", FindHandle(5)).Return(nil)

	err := h.Enumerate(t.Context(), `C:\data`, func(dir, name string) schema.EnumerationResult {
		return schema.EnumContinue
	})

	require.Error(t, err)
	require.ErrorIs(t, err, encoding.ErrMalformed)

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Fail_EncodePattern tests an unencodable path failing before
// any native call.
func TestEnumerate_Fail_EncodePattern(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	err := h.Enumerate(t.Context(), "bad\xff", func(dir, name string) schema.EnumerationResult {
		return schema.EnumContinue
	})

	require.Error(t, err)
	require.ErrorIs(t, err, encoding.ErrMalformed)

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Fail_CtxCancel tests in-flight context cancellation.
func TestEnumerate_Fail_CtxCancel(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	mockOps.On("FindFirstFile", u16(t, `C:\data\*`)).Return(FindHandle(6), entry(t, "first"), nil)
	mockOps.On("FindClose", FindHandle(6)).Return(nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := h.Enumerate(ctx, `C:\data`, func(dir, name string) schema.EnumerationResult {
		return schema.EnumContinue
	})

	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Success_Drives tests the virtual root enumerating present
// drive letters from the native bitmask.
func TestEnumerate_Success_Drives(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	drives := uint32(1<<('A'-'A') | 1<<('C'-'A') | 1<<('Z'-'A'))
	mockOps.On("GetLogicalDrives").Return(drives, nil)

	var dirs, names []string
	err := h.Enumerate(t.Context(), "", func(dir, name string) schema.EnumerationResult {
		dirs = append(dirs, dir)
		names = append(names, name)

		return schema.EnumContinue
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"A:", "C:", "Z:"}, names)
	assert.Equal(t, []string{"", "", ""}, dirs)

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Success_DrivesStop tests graceful early termination of the
// drive listing.
func TestEnumerate_Success_DrivesStop(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	drives := uint32(1<<('C'-'A') | 1<<('D'-'A'))
	mockOps.On("GetLogicalDrives").Return(drives, nil)

	var names []string
	err := h.Enumerate(t.Context(), "", func(dir, name string) schema.EnumerationResult {
		names = append(names, name)

		return schema.EnumStop
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"C:"}, names)

	mockOps.AssertExpectations(t)
}

// TestEnumerate_Fail_DrivesCallbackAbort tests the callback failing the
// drive listing.
func TestEnumerate_Fail_DrivesCallbackAbort(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	mockOps.On("GetLogicalDrives").Return(uint32(1), nil)

	err := h.Enumerate(t.Context(), "", func(dir, name string) schema.EnumerationResult {
		return schema.EnumFailure
	})

	require.Error(t, err)
	require.ErrorIs(t, err, schema.ErrCallbackAborted)

	mockOps.AssertExpectations(t)
}

// TestIsDotEntry_Success tests self and parent entry detection on native
// name units.
func TestIsDotEntry_Success(t *testing.T) {
	t.Parallel()

	assert.True(t, isDotEntry([]uint16{'.'}))
	assert.True(t, isDotEntry([]uint16{'.', '.'}))

	assert.False(t, isDotEntry([]uint16{'.', '.', '.'}))
	assert.False(t, isDotEntry([]uint16{'.', 'x'}))
	assert.False(t, isDotEntry([]uint16{'x'}))
	assert.False(t, isDotEntry(nil))
}
