//go:build windows

package winfs

import (
	"errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Native is an implementation wrapping the Win32 wide-character filesystem
// functions behind the package's platform-neutral mirror types.
type Native struct{}

// GetLogicalDrives wraps around [windows.GetLogicalDrives].
func (*Native) GetLogicalDrives() (uint32, error) {
	drives, err := windows.GetLogicalDrives()

	return drives, nativeError(err)
}

// FindFirstFile wraps around [windows.FindFirstFile].
func (*Native) FindFirstFile(pattern []uint16) (FindHandle, FindData, error) {
	var data windows.Win32finddata

	handle, err := windows.FindFirstFile(nulTerminated(pattern), &data)
	if err != nil {
		return 0, FindData{}, nativeError(err)
	}

	return FindHandle(handle), fromFindData(&data), nil
}

// FindNextFile wraps around [windows.FindNextFile].
func (*Native) FindNextFile(handle FindHandle) (FindData, error) {
	var data windows.Win32finddata

	if err := windows.FindNextFile(windows.Handle(handle), &data); err != nil {
		return FindData{}, nativeError(err)
	}

	return fromFindData(&data), nil
}

// FindClose wraps around [windows.FindClose].
func (*Native) FindClose(handle FindHandle) error {
	return nativeError(windows.FindClose(windows.Handle(handle)))
}

// GetFileAttributesEx wraps around [windows.GetFileAttributesEx].
func (*Native) GetFileAttributesEx(path []uint16) (AttributeData, error) {
	var data windows.Win32FileAttributeData

	err := windows.GetFileAttributesEx(nulTerminated(path),
		windows.GetFileExInfoStandard, (*byte)(unsafe.Pointer(&data)))
	if err != nil {
		return AttributeData{}, nativeError(err)
	}

	return AttributeData{
		FileAttributes: data.FileAttributes,
		CreationTime:   fromFiletime(data.CreationTime),
		LastAccessTime: fromFiletime(data.LastAccessTime),
		LastWriteTime:  fromFiletime(data.LastWriteTime),
		FileSizeHigh:   data.FileSizeHigh,
		FileSizeLow:    data.FileSizeLow,
	}, nil
}

// RemoveDirectory wraps around [windows.RemoveDirectory].
func (*Native) RemoveDirectory(path []uint16) error {
	return nativeError(windows.RemoveDirectory(nulTerminated(path)))
}

// DeleteFile wraps around [windows.DeleteFile].
func (*Native) DeleteFile(path []uint16) error {
	return nativeError(windows.DeleteFile(nulTerminated(path)))
}

// MoveFileReplacing wraps around [windows.MoveFileEx] with the
// replace-existing flag set.
func (*Native) MoveFileReplacing(oldpath []uint16, newpath []uint16) error {
	return nativeError(windows.MoveFileEx(nulTerminated(oldpath),
		nulTerminated(newpath), windows.MOVEFILE_REPLACE_EXISTING))
}

// CreateDirectory wraps around [windows.CreateDirectory] with default
// security attributes.
func (*Native) CreateDirectory(path []uint16) error {
	return nativeError(windows.CreateDirectory(nulTerminated(path), nil))
}

// nativeError converts a syscall error into the package's platform-neutral
// [Errno] mirror, leaving other errors untouched.
func nativeError(err error) error {
	if err == nil {
		return nil
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return Errno(errno)
	}

	return err
}

// nulTerminated returns a pointer to a NUL-terminated copy of the given
// UTF-16 units, as the native API expects.
func nulTerminated(units []uint16) *uint16 {
	buf := make([]uint16, len(units)+1)
	copy(buf, units)

	return &buf[0]
}

// fromFindData copies the native search result into the mirror structure,
// cloning the name up to its terminator since the native buffer is reused.
func fromFindData(data *windows.Win32finddata) FindData {
	n := 0
	for n < len(data.FileName) && data.FileName[n] != 0 {
		n++
	}
	name := make([]uint16, n)
	copy(name, data.FileName[:n])

	return FindData{
		FileAttributes: data.FileAttributes,
		CreationTime:   fromFiletime(data.CreationTime),
		LastAccessTime: fromFiletime(data.LastAccessTime),
		LastWriteTime:  fromFiletime(data.LastWriteTime),
		FileSizeHigh:   data.FileSizeHigh,
		FileSizeLow:    data.FileSizeLow,
		FileName:       name,
	}
}

// fromFiletime copies a native FILETIME into the mirror structure.
func fromFiletime(ft windows.Filetime) Filetime {
	return Filetime{
		LowDateTime:  ft.LowDateTime,
		HighDateTime: ft.HighDateTime,
	}
}
