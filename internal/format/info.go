package format

// InfoWord is the decoded form of the bit-info/version word.
type InfoWord struct {
	Version       uint32
	IsLast        bool
	HasDictionary bool
	HasFirstEvent bool
	EventType     EventType
}

// DecodeInfoWordV4 decodes the info word of a v4 block header.
func DecodeInfoWordV4(w uint32) InfoWord {
	return InfoWord{
		Version:       w & InfoVersionMask,
		HasDictionary: w&BlockInfoDictionaryBit != 0,
		IsLast:        w&BlockInfoLastBit != 0,
		HasFirstEvent: w&BlockInfoFirstEventBit != 0,
		EventType:     EventType((w >> InfoEventTypeShift) & InfoEventTypeMask),
	}
}

// DecodeInfoWordV6 decodes the info word of a v6 record header.
// Do not use it for the v6 file header: bit 9 means "has first event" there.
func DecodeInfoWordV6(w uint32) InfoWord {
	return InfoWord{
		Version:       w & InfoVersionMask,
		HasDictionary: w&RecordInfoDictionaryBit != 0,
		IsLast:        w&RecordInfoLastBit != 0,
		HasFirstEvent: w&RecordInfoFirstEventBit != 0,
		EventType:     EventType((w >> InfoEventTypeShift) & InfoEventTypeMask),
	}
}

// FileInfo is the decoded info word of a v6 file header.
type FileInfo struct {
	Version             uint32
	HasDictionary       bool
	HasFirstEvent       bool
	HasTrailerWithIndex bool
	UserHeaderPadding   uint32
	HeaderType          HeaderType
}

// DecodeFileInfoWord decodes the info word of a v6 file header.
func DecodeFileInfoWord(w uint32) FileInfo {
	return FileInfo{
		Version:             w & InfoVersionMask,
		HasDictionary:       w&FileInfoDictionaryBit != 0,
		HasFirstEvent:       w&FileInfoFirstEventBit != 0,
		HasTrailerWithIndex: w&FileInfoTrailerIndexBit != 0,
		UserHeaderPadding:   (w >> InfoPad1Shift) & InfoPadMask,
		HeaderType:          HeaderType((w >> InfoHeaderTypeShift) & InfoHeaderTypeMask),
	}
}

// DecodeInfoWord picks the block or record routine from version, which must
// come from the structure being decoded, not from a file-wide setting.
func DecodeInfoWord(w uint32, version uint32) InfoWord {
	if version >= FileHeaderMinVersion {
		return DecodeInfoWordV6(w)
	}
	return DecodeInfoWordV4(w)
}

// VersionOf extracts the version byte from any info word.
func VersionOf(w uint32) uint32 { return w & InfoVersionMask }

// EventType is the CODA event type carried in info word bits 10-13.
type EventType uint8

const (
	EventROCRaw EventType = iota
	EventPhysics
	EventPartialPhysics
	EventDisentangledPhysics
	EventUser
	EventControl
	EventMixed
	_
	EventROCRawStreaming
	EventPhysicsStreaming
	EventOther EventType = 15
)

func (t EventType) String() string {
	switch t {
	case EventROCRaw:
		return "ROC raw"
	case EventPhysics:
		return "physics"
	case EventPartialPhysics:
		return "partial physics"
	case EventDisentangledPhysics:
		return "disentangled physics"
	case EventUser:
		return "user"
	case EventControl:
		return "control"
	case EventMixed:
		return "mixed"
	case EventROCRawStreaming:
		return "ROC raw streaming"
	case EventPhysicsStreaming:
		return "physics streaming"
	case EventOther:
		return "other"
	default:
		return "unknown"
	}
}

// HeaderType is the header kind carried in info word bits 28-31.
type HeaderType uint8

const (
	HeaderEvioRecord  HeaderType = 0
	HeaderEvioFile    HeaderType = 1
	HeaderEvioExtFile HeaderType = 2
	HeaderEvioTrailer HeaderType = 3
	HeaderHipoRecord  HeaderType = 4
	HeaderHipoFile    HeaderType = 5
	HeaderHipoExtFile HeaderType = 6
	HeaderHipoTrailer HeaderType = 7
)
