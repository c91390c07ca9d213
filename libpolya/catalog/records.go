package catalog

import (
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
)

// CatalogState is the header record of a group catalog.
type CatalogState struct {
	MajorVers int32  `protobuf:"varint,1,opt,name=major_vers,json=majorVers,proto3" json:"major_vers,omitempty"`
	MinorVers int32  `protobuf:"varint,2,opt,name=minor_vers,json=minorVers,proto3" json:"minor_vers,omitempty"`
	NumGroups uint32 `protobuf:"varint,3,opt,name=num_groups,json=numGroups,proto3" json:"num_groups,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

// GroupRecord holds every element of a built group.
//
// Elements is the concatenation of each element's Perm key (N bytes each), in element order.
type GroupRecord struct {
	Solid    string `protobuf:"bytes,1,opt,name=solid,proto3" json:"solid,omitempty"`
	Kind     int32  `protobuf:"varint,2,opt,name=kind,proto3" json:"kind,omitempty"`
	N        uint32 `protobuf:"varint,3,opt,name=n,proto3" json:"n,omitempty"`
	Order    uint32 `protobuf:"varint,4,opt,name=order,proto3" json:"order,omitempty"`
	Elements []byte `protobuf:"bytes,5,opt,name=elements,proto3" json:"elements,omitempty"`
}

func (m *GroupRecord) Reset()         { *m = GroupRecord{} }
func (m *GroupRecord) String() string { return proto.CompactTextString(m) }
func (*GroupRecord) ProtoMessage()    {}

// NewGroupRecord packs the elements of G into a GroupRecord.
func NewGroupRecord(key gopolya.GroupKey, G gopolya.PermutationGroup) *GroupRecord {
	rec := &GroupRecord{
		Solid:    string(key.Solid),
		Kind:     int32(key.Kind),
		N:        uint32(G.N()),
		Order:    uint32(G.Order()),
		Elements: make([]byte, 0, G.N()*G.Order()),
	}
	for i := 0; i < G.Order(); i++ {
		rec.Elements = G.Element(i).AppendKey(rec.Elements)
	}
	return rec
}

// Perms unpacks the elements held by this record.
func (rec *GroupRecord) Perms() ([]gopolya.Perm, error) {
	N, order := int(rec.N), int(rec.Order)
	if N <= 0 || N > gopolya.MaxElements || order <= 0 {
		return nil, errors.Wrapf(gopolya.ErrBadGroupRecord, "n=%d, order=%d", N, order)
	}
	if len(rec.Elements) != N*order {
		return nil, errors.Wrapf(gopolya.ErrBadGroupRecord, "have %d element bytes, expected %d", len(rec.Elements), N*order)
	}

	perms := make([]gopolya.Perm, order)
	for i := range perms {
		perms[i] = gopolya.PermFromKey(rec.Elements[i*N : (i+1)*N])
		if err := perms[i].Validate(); err != nil {
			return nil, errors.Wrapf(gopolya.ErrBadGroupRecord, "element %d: %v", i, err)
		}
	}
	return perms, nil
}
