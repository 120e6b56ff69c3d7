package format

// DataType is the content type code stored in structure headers.
type DataType uint8

const (
	TypeUnknown32   DataType = 0x0
	TypeUint32      DataType = 0x1
	TypeFloat32     DataType = 0x2
	TypeCharStar8   DataType = 0x3
	TypeShort16     DataType = 0x4
	TypeUShort16    DataType = 0x5
	TypeChar8       DataType = 0x6
	TypeUChar8      DataType = 0x7
	TypeDouble64    DataType = 0x8
	TypeLong64      DataType = 0x9
	TypeULong64     DataType = 0xa
	TypeInt32       DataType = 0xb
	TypeTagSegment  DataType = 0xc
	TypeAlsoSegment DataType = 0xd
	TypeAlsoBank    DataType = 0xe
	TypeComposite   DataType = 0xf
	TypeBank        DataType = 0x10
	TypeSegment     DataType = 0x20
	TypeHollerit    DataType = 0x21
	TypeNValue      DataType = 0x22
	TypeSmallNValue DataType = 0x23
	TypeSmallMValue DataType = 0x24
)

type dataTypeInfo struct {
	name     string
	elemSize uint8 // bytes per element, 0 for containers and composite
}

var dataTypes = map[DataType]dataTypeInfo{
	TypeUnknown32:   {"unknown32", 4},
	TypeUint32:      {"uint32", 4},
	TypeFloat32:     {"float32", 4},
	TypeCharStar8:   {"charstar8", 1},
	TypeShort16:     {"short16", 2},
	TypeUShort16:    {"ushort16", 2},
	TypeChar8:       {"char8", 1},
	TypeUChar8:      {"uchar8", 1},
	TypeDouble64:    {"double64", 8},
	TypeLong64:      {"long64", 8},
	TypeULong64:     {"ulong64", 8},
	TypeInt32:       {"int32", 4},
	TypeTagSegment:  {"tagsegment", 0},
	TypeAlsoSegment: {"segment", 0},
	TypeAlsoBank:    {"bank", 0},
	TypeComposite:   {"composite", 0},
	TypeBank:        {"bank", 0},
	TypeSegment:     {"segment", 0},
	TypeHollerit:    {"hollerit", 4},
	TypeNValue:      {"N value", 4},
	TypeSmallNValue: {"n value", 2},
	TypeSmallMValue: {"m value", 1},
}

// Known reports whether t is a defined type code.
func (t DataType) Known() bool {
	_, ok := dataTypes[t]
	return ok
}

func (t DataType) String() string {
	if info, ok := dataTypes[t]; ok {
		return info.name
	}
	return "invalid"
}

// ElementSize is the size in bytes of one data element, 0 for containers,
// composite data and undefined codes.
func (t DataType) ElementSize() int {
	return int(dataTypes[t].elemSize)
}

// ChildKind reports which structure kind t contains, if it is a container.
func (t DataType) ChildKind() (StructureKind, bool) {
	switch t {
	case TypeBank, TypeAlsoBank:
		return KindBank, true
	case TypeSegment, TypeAlsoSegment:
		return KindSegment, true
	case TypeTagSegment:
		return KindTagSegment, true
	default:
		return 0, false
	}
}

// IsContainer reports whether t holds nested structures.
func (t DataType) IsContainer() bool {
	_, ok := t.ChildKind()
	return ok
}

// AllowsPadding reports whether pad trailing bytes are legal for t.
// Two bytes of padding need 8 or 16-bit elements; one or three bytes only
// make sense for 8-bit character and byte data.
func (t DataType) AllowsPadding(pad uint8) bool {
	switch pad {
	case 0:
		return true
	case 2:
		switch t {
		case TypeShort16, TypeUShort16, TypeCharStar8, TypeChar8, TypeUChar8:
			return true
		}
		return false
	case 1, 3:
		switch t {
		case TypeCharStar8, TypeChar8, TypeUChar8:
			return true
		}
		return false
	default:
		return false
	}
}
