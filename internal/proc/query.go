package proc

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// QueryTable answers every lookup through the host's process-information
// query service: Get-CimInstance one-liners, with a wmic snapshot fallback
// for the listing operations when PowerShell itself is unavailable. All
// invocations go through the Executor seam.
type QueryTable struct{}

func NewQueryTable() *QueryTable {
	return &QueryTable{}
}

func (t *QueryTable) PidsByName(name string) []int {
	base := escapeWQL(strings.TrimSuffix(name, ".exe"))
	script := fmt.Sprintf("Get-CimInstance -ClassName Win32_Process -Filter \"Name='%s' OR Name='%s.exe'\" | Select-Object Name,ProcessId | ConvertTo-Csv -NoTypeInformation", base, base)
	out, err := powershell(script)
	if err != nil {
		var pids []int
		for _, p := range wmicSnapshot() {
			if p.name == base || p.name == base+".exe" {
				pids = append(pids, p.pid)
			}
		}
		return pids
	}
	return parseCsvPids(out)
}

func (t *QueryTable) ParentPid(pid int) int {
	out, err := powershell(fmt.Sprintf("Get-CimInstance -ClassName Win32_Process -Filter \"ProcessId=%d\" | Select-Object -ExpandProperty ParentProcessId", pid))
	if err == nil {
		if ppid, err := strconv.Atoi(strings.TrimSpace(string(out))); err == nil && ppid >= 0 {
			return ppid
		}
		return 0
	}
	for _, p := range wmicSnapshot() {
		if p.pid == pid {
			return p.ppid
		}
	}
	return 0
}

func (t *QueryTable) CommandLine(pid int) string {
	out, err := powershell(fmt.Sprintf("Get-CimInstance -ClassName Win32_Process -Filter \"ProcessId=%d\" | Select-Object -ExpandProperty CommandLine", pid))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func (t *QueryTable) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	return pidAlive(pid)
}

func (t *QueryTable) Responding(pid int) bool {
	// Responding is only meaningful for window-owning processes; the
	// platform reports True for everything else, and so do we on error.
	out, err := powershell(fmt.Sprintf("Get-Process -Id %d | Select-Object -ExpandProperty Responding", pid))
	if err != nil {
		return true
	}
	return !strings.EqualFold(strings.TrimSpace(string(out)), "false")
}

func (t *QueryTable) StartTime(pid int) time.Time {
	out, err := powershell(fmt.Sprintf("Get-CimInstance -ClassName Win32_Process -Filter \"ProcessId=%d\" | Select-Object -ExpandProperty CreationDate | Get-Date -Format 'yyyyMMddHHmmss'", pid))
	if err != nil {
		return time.Time{}
	}
	val := strings.TrimSpace(string(out))
	if len(val) < 14 {
		return time.Time{}
	}
	started, err := time.ParseInLocation("20060102150405", val[:14], time.Local)
	if err != nil {
		return time.Time{}
	}
	return started
}

func (t *QueryTable) CPUTime(pid int) time.Duration {
	// KernelModeTime and UserModeTime are cumulative, in 100 ns units.
	script := fmt.Sprintf("Get-CimInstance -ClassName Win32_Process -Filter \"ProcessId=%d\" | ForEach-Object { 'Kernel=' + $_.KernelModeTime; 'User=' + $_.UserModeTime }", pid)
	out, err := powershell(script)
	if err != nil {
		return 0
	}

	var kernel, user uint64
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if after, found := strings.CutPrefix(line, "Kernel="); found {
			kernel, _ = strconv.ParseUint(after, 10, 64)
		} else if after, found := strings.CutPrefix(line, "User="); found {
			user, _ = strconv.ParseUint(after, 10, 64)
		}
	}
	return time.Duration(kernel+user) * 100 * time.Nanosecond
}

func (t *QueryTable) WorkingSetBytes(pid int) uint64 {
	out, err := powershell(fmt.Sprintf("Get-CimInstance -ClassName Win32_Process -Filter \"ProcessId=%d\" | Select-Object -ExpandProperty WorkingSetSize", pid))
	if err != nil {
		return 0
	}
	bytes, err := strconv.ParseUint(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0
	}
	return bytes
}

func (t *QueryTable) ChildPids(pid int) []int {
	if pid <= 0 {
		return nil
	}
	out, err := powershell(fmt.Sprintf("Get-CimInstance -ClassName Win32_Process -Filter \"ParentProcessId=%d\" | Select-Object Name,ProcessId | ConvertTo-Csv -NoTypeInformation", pid))
	if err != nil {
		var pids []int
		for _, p := range wmicSnapshot() {
			if p.ppid == pid {
				pids = append(pids, p.pid)
			}
		}
		sort.Ints(pids)
		return pids
	}
	pids := parseCsvPids(out)
	sort.Ints(pids)
	return pids
}

func powershell(script string) ([]byte, error) {
	return Run("powershell", "-NoProfile", "-NonInteractive", script)
}

// escapeWQL doubles single quotes so a target name cannot break out of the
// CIM filter literal.
func escapeWQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// parseCsvPids reads the ProcessId column out of ConvertTo-Csv output:
//
//	"Name","ProcessId"
//	"node.exe","1234"
func parseCsvPids(out []byte) []int {
	var pids []int
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "\"Name\"") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		pid, err := strconv.Atoi(strings.Trim(parts[len(parts)-1], "\""))
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}

type wmicProc struct {
	name string
	pid  int
	ppid int
}

// wmicSnapshot collects a lightweight view of the whole process table for
// the listing fallbacks.
func wmicSnapshot() []wmicProc {
	out, err := Run("wmic", "process", "get", "Name,ParentProcessId,ProcessId", "/format:csv")
	if err != nil {
		return nil
	}

	r := csv.NewReader(strings.NewReader(string(out)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil || len(records) < 2 {
		return nil
	}

	nameIdx, ppidIdx, pidIdx := -1, -1, -1
	for i, h := range records[0] {
		switch strings.TrimSpace(h) {
		case "Name":
			nameIdx = i
		case "ParentProcessId":
			ppidIdx = i
		case "ProcessId":
			pidIdx = i
		}
	}
	if nameIdx == -1 || ppidIdx == -1 || pidIdx == -1 {
		return nil
	}

	procs := make([]wmicProc, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) <= pidIdx || len(record) <= ppidIdx || len(record) <= nameIdx {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSpace(record[pidIdx]))
		if err != nil {
			continue
		}
		ppid, err := strconv.Atoi(strings.TrimSpace(record[ppidIdx]))
		if err != nil {
			continue
		}
		procs = append(procs, wmicProc{
			name: strings.TrimSpace(record[nameIdx]),
			pid:  pid,
			ppid: ppid,
		})
	}
	return procs
}
