//go:build windows

package hwinfo

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procOpenFileMappingW = modkernel32.NewProc("OpenFileMappingW")
)

type mappedView struct {
	addr uintptr
	size uintptr
}

// openRegionView maps the HWiNFO region read-only. The mapping handle is
// closed immediately; the view keeps the region alive until unmapped.
func openRegionView() (regionView, error) {
	namePtr, err := windows.UTF16PtrFromString(RegionName)
	if err != nil {
		return nil, err
	}

	handle, err := openFileMapping(windows.FILE_MAP_READ, false, namePtr)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(handle)

	addr, err := windows.MapViewOfFile(handle, windows.FILE_MAP_READ, 0, 0, 0)
	if err != nil {
		return nil, err
	}

	var info windows.MemoryBasicInformation
	if err := windows.VirtualQuery(addr, &info, unsafe.Sizeof(info)); err != nil {
		_ = windows.UnmapViewOfFile(addr)
		return nil, err
	}

	return &mappedView{addr: addr, size: info.RegionSize}, nil
}

func openFileMapping(access uint32, inheritHandle bool, name *uint16) (windows.Handle, error) {
	var inherit uintptr
	if inheritHandle {
		inherit = 1
	}

	r0, _, e1 := procOpenFileMappingW.Call(uintptr(access), inherit, uintptr(unsafe.Pointer(name)))
	if r0 == 0 {
		return 0, e1
	}

	return windows.Handle(r0), nil
}

func (v *mappedView) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v.addr)), v.size)
}

func (v *mappedView) close() error {
	return windows.UnmapViewOfFile(v.addr)
}
