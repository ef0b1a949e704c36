package seeddefs

import "github.com/jihwankim/fazz/pkg/corpus"

// SOP Class UIDs pinned as literal record values — mirrors
// original_source/corpus/dicom.py's SOPClassFind/SOPClassGet/SOPClassMove
// enums, which use real DICOM UID strings rather than symbolic names.
const (
	sopClassPatientRootFind = "1.2.840.10008.5.1.4.1.2.1.1"
	sopClassVerification    = "1.2.840.10008.1.1"
)

// DICOM builds the initial DICOM seed: associate, a C-ECHO verification,
// a C-FIND against a pinned SOP class, and a terminal release. The
// SOP-class Record arguments are marked mutable but carry no mutate
// function — deliberately inert, per spec.md §9's second Open Question:
// "structural mutation of DICOM datasets is unimplemented... must be
// preserved, not silently fixed to random mutation."
func DICOM() *corpus.Seed {
	return corpus.NewSeed(
		corpus.NewCall("associate", false),
		corpus.NewCall("send_c_echo", false,
			corpus.NewRecord("sop_class", sopClassVerification, true, nil, nil)),
		corpus.NewCall("send_c_find", false,
			corpus.NewRecord("sop_class", sopClassPatientRootFind, true, nil, nil)),
		corpus.NewCall("release", true),
	)
}
