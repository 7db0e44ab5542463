package winfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HecaiYuan/crossfs/internal/encoding"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// TestStat_Success_File tests metadata mapping for a regular file.
func TestStat_Success_File(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	const unixEpochTicks = uint64(116444736000000000)

	mockOps.On("GetFileAttributesEx", u16(t, `C:\data\file.bin`)).Return(AttributeData{
		FileAttributes: 0x20, // archive
		CreationTime:   filetimeFromTicks(unixEpochTicks + 10000000),
		LastWriteTime:  filetimeFromTicks(unixEpochTicks + 17040672000000000),
		LastAccessTime: Filetime{},
		FileSizeHigh:   1,
		FileSizeLow:    5,
	}, nil)

	info, err := h.Stat(`C:\data\file.bin`)

	require.NoError(t, err)
	assert.Equal(t, schema.TypeFile, info.Type)
	assert.Equal(t, uint64(1)<<32|5, info.Size)
	assert.Equal(t, int64(1), info.CreateTime)
	assert.Equal(t, int64(1704067200), info.ModifyTime)
	assert.Equal(t, int64(0), info.AccessTime)

	mockOps.AssertExpectations(t)
}

// TestStat_Success_Directory tests that directories report size zero
// regardless of what the native layer claims.
func TestStat_Success_Directory(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	mockOps.On("GetFileAttributesEx", u16(t, `C:\data`)).Return(AttributeData{
		FileAttributes: attrDirectory,
		FileSizeHigh:   0,
		FileSizeLow:    4096,
	}, nil)

	info, err := h.Stat(`C:\data`)

	require.NoError(t, err)
	assert.Equal(t, schema.TypeDirectory, info.Type)
	assert.Zero(t, info.Size)
	assert.True(t, info.IsDir())

	mockOps.AssertExpectations(t)
}

// TestStat_Success_Other tests the device and offline attributes mapping to
// the other type while keeping the reported size.
func TestStat_Success_Other(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	mockOps.On("GetFileAttributesEx", u16(t, `C:\dev`)).Return(AttributeData{
		FileAttributes: attrDevice,
		FileSizeLow:    42,
	}, nil).Once()
	mockOps.On("GetFileAttributesEx", u16(t, `C:\offline.dat`)).Return(AttributeData{
		FileAttributes: attrOffline,
		FileSizeLow:    7,
	}, nil).Once()

	info, err := h.Stat(`C:\dev`)
	require.NoError(t, err)
	assert.Equal(t, schema.TypeOther, info.Type)
	assert.Equal(t, uint64(42), info.Size)

	info, err = h.Stat(`C:\offline.dat`)
	require.NoError(t, err)
	assert.Equal(t, schema.TypeOther, info.Type)
	assert.Equal(t, uint64(7), info.Size)

	mockOps.AssertExpectations(t)
}

// TestStat_Success_DirectoryBeatsDevice tests the directory attribute taking
// precedence over the device attribute.
func TestStat_Success_DirectoryBeatsDevice(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	mockOps.On("GetFileAttributesEx", u16(t, `C:\weird`)).Return(AttributeData{
		FileAttributes: attrDirectory | attrDevice,
		FileSizeLow:    42,
	}, nil)

	info, err := h.Stat(`C:\weird`)

	require.NoError(t, err)
	assert.Equal(t, schema.TypeDirectory, info.Type)
	assert.Zero(t, info.Size)

	mockOps.AssertExpectations(t)
}

// TestStat_Fail_Native tests native query failure, including nonexistence.
func TestStat_Fail_Native(t *testing.T) {
	t.Parallel()

	h, mockOps, sink := newTestHandler()

	mockOps.On("GetFileAttributesEx", u16(t, `C:\missing`)).Return(AttributeData{}, ErrnoFileNotFound)

	info, err := h.Stat(`C:\missing`)

	require.Error(t, err)
	require.ErrorIs(t, err, ErrnoFileNotFound)
	assert.Equal(t, schema.PathInfo{}, info)
	assert.NotEmpty(t, sink.Message())

	mockOps.AssertExpectations(t)
}

// TestStat_Fail_Encode tests an unencodable path failing before any native
// call.
func TestStat_Fail_Encode(t *testing.T) {
	t.Parallel()

	h, mockOps, _ := newTestHandler()

	_, err := h.Stat("bad\xff")

	require.Error(t, err)
	require.ErrorIs(t, err, encoding.ErrMalformed)

	mockOps.AssertExpectations(t)
}
