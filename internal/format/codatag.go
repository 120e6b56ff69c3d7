package format

// CodaTag describes a bank tag reserved by the CODA data acquisition system.
type CodaTag struct {
	Name        string
	Description string
}

var codaTags = map[uint16]CodaTag{
	0xff10: {"RAW_TRIGGER", "raw trigger bank"},
	0xff11: {"RAW_TRIGGER_TS", "raw trigger bank with timestamps"},
	0xff12: {"RAW_TRIGGER_RUN", "raw trigger bank with run data"},
	0xff13: {"RAW_TRIGGER_TS_RUN", "raw trigger bank with timestamps and run data"},
	0xff14: {"RAW_TRIGGER_TS_BIG", "raw trigger bank with 64-bit timestamps"},
	0xff20: {"BUILT_TRIGGER_BANK", "built trigger bank"},
	0xff21: {"BUILT_TRIGGER_TS", "built trigger bank with timestamps"},
	0xff22: {"BUILT_TRIGGER_RUN", "built trigger bank with run data"},
	0xff23: {"BUILT_TRIGGER_TS_RUN", "built trigger bank with timestamps and run data"},
	0xff24: {"BUILT_TRIGGER_NRSD", "built trigger bank without ROC specific data"},
	0xff25: {"BUILT_TRIGGER_TS_NRSD", "built trigger bank with timestamps, no ROC specific data"},
	0xff26: {"BUILT_TRIGGER_RUN_NRSD", "built trigger bank with run data, no ROC specific data"},
	0xff27: {"BUILT_TRIGGER_TS_RUN_NRSD", "built trigger bank with timestamps and run data, no ROC specific data"},
	0xff30: {"STREAMING_SIB_BUILT", "streaming stream info bank, built"},
	0xff31: {"STREAMING_TSS_BUILT", "streaming time slice segment, built"},
	0xff50: {"PHYSICS", "physics event built by the event builder"},
	0xff58: {"PHYSICS_SYNC", "physics event with sync flag set"},
	0xff60: {"STREAMING_PHYSICS", "streaming physics event"},
	0xff70: {"DISENTANGLED_PHYSICS", "disentangled physics event"},
	0xffd0: {"SYNC", "sync control event"},
	0xffd1: {"PRESTART", "prestart control event"},
	0xffd2: {"GO", "go control event"},
	0xffd3: {"PAUSE", "pause control event"},
	0xffd4: {"END", "end control event"},
}

// LookupCodaTag returns the reserved meaning of tag, if any.
func LookupCodaTag(tag uint16) (CodaTag, bool) {
	t, ok := codaTags[tag]
	return t, ok
}
