package seeddefs

import "testing"

func TestFTPSeedEndsInTerminalQuit(t *testing.T) {
	s := FTP()
	last := s.Get(s.Len() - 1)
	if last.Name != "quit" || !last.IsLast {
		t.Fatalf("ftp seed must end in a terminal quit call, got %+v", last)
	}
}

func TestSMTPSeedEndsInTerminalQuit(t *testing.T) {
	s := SMTP()
	last := s.Get(s.Len() - 1)
	if last.Name != "quit" || !last.IsLast {
		t.Fatalf("smtp seed must end in a terminal quit call, got %+v", last)
	}
}

func TestDICOMSeedEndsInTerminalRelease(t *testing.T) {
	s := DICOM()
	last := s.Get(s.Len() - 1)
	if last.Name != "release" || !last.IsLast {
		t.Fatalf("dicom seed must end in a terminal release call, got %+v", last)
	}
}

func TestDICOMRecordMutateIsNoop(t *testing.T) {
	s := DICOM()
	for _, c := range s.Calls {
		for _, a := range c.Args {
			before := a.Value
			a.Mutate()
			if a.Value != before {
				t.Fatalf("dicom record argument %q must not mutate, changed %v -> %v", a.Name, before, a.Value)
			}
		}
	}
}

func TestDNSQueryBuildsNonEmptyPayload(t *testing.T) {
	s := DNS()
	payload, err := s.Get(0).Args[0].Unpack()
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	b, ok := payload.([]byte)
	if !ok || len(b) == 0 {
		t.Fatalf("expected non-empty dns wire payload, got %#v", payload)
	}
}
