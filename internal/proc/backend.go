package proc

import "runtime"

// DetectTable picks the accessor backend for this host. Pure function of
// the platform, called once at startup; nothing downstream branches on the
// OS again.
func DetectTable() Table {
	return tableFor(runtime.GOOS)
}

func tableFor(goos string) Table {
	if goos == "windows" {
		return NewQueryTable()
	}
	return NewProcfsTable()
}
