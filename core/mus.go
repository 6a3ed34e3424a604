package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for catalog types. The records here are flat, so the
// serializers are written by hand instead of generated.
var (
	// IDMUS serializes ID values.
	IDMUS = idMUS{}

	// DocumentStateMUS serializes DocumentState values.
	DocumentStateMUS = documentStateMUS{}

	// DocumentRecordMUS serializes DocumentRecord values.
	DocumentRecordMUS = documentRecordMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type documentStateMUS struct{}

func (documentStateMUS) Marshal(state DocumentState, bs []byte) (n int) {
	return varint.Int.Marshal(int(state), bs)
}

func (documentStateMUS) Unmarshal(bs []byte) (state DocumentState, n int, err error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return DocumentState(v), n, err
}

func (documentStateMUS) Size(state DocumentState) (size int) {
	return varint.Int.Size(int(state))
}

func (documentStateMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

type documentRecordMUS struct{}

func (documentRecordMUS) Marshal(record DocumentRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(record.Id, bs)
	n += ord.String.Marshal(record.StoreName, bs[n:])
	n += ord.String.Marshal(record.DocumentName, bs[n:])
	n += ord.String.Marshal(record.DisplayName, bs[n:])
	n += ord.String.Marshal(record.SourcePath, bs[n:])
	n += ord.String.Marshal(record.MIMEType, bs[n:])
	n += varint.Int64.Marshal(record.SizeBytes, bs[n:])
	n += DocumentStateMUS.Marshal(record.State, bs[n:])
	// Timestamps travel as Unix micros.
	n += varint.Int64.Marshal(record.IngestedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(record.UpdatedAt.UnixMicro(), bs[n:])
	return
}

func (documentRecordMUS) Unmarshal(bs []byte) (record DocumentRecord, n int, err error) {
	var n1 int
	record.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	record.StoreName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	record.DocumentName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	record.DisplayName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	record.SourcePath, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	record.MIMEType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	record.SizeBytes, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	record.State, n1, err = DocumentStateMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	record.IngestedAt = time.UnixMicro(micros).UTC()
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	record.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (documentRecordMUS) Size(record DocumentRecord) (size int) {
	size = IDMUS.Size(record.Id)
	size += ord.String.Size(record.StoreName)
	size += ord.String.Size(record.DocumentName)
	size += ord.String.Size(record.DisplayName)
	size += ord.String.Size(record.SourcePath)
	size += ord.String.Size(record.MIMEType)
	size += varint.Int64.Size(record.SizeBytes)
	size += DocumentStateMUS.Size(record.State)
	size += varint.Int64.Size(record.IngestedAt.UnixMicro())
	size += varint.Int64.Size(record.UpdatedAt.UnixMicro())
	return
}

func (documentRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for i := 0; i < 5; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = DocumentStateMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for i := 0; i < 2; i++ {
		n1, err = varint.Int64.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
