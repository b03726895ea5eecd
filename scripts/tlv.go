// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scripts

import (
	"bytes"
	"io"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/lnd/tlv"
)

const (
	typeScriptSetPubkeyScript tlv.Type = 1
	typeScriptSetSigScript    tlv.Type = 2
	typeScriptSetWitness      tlv.Type = 3
)

// EncodeScriptSet serializes the set as a TLV stream.  Scripts are stored as
// their raw bytes.  The witness record is only written if the set has a
// witness, so an empty witness and an absent one stay distinct.
func EncodeScriptSet(s *ScriptSet) ([]byte, error) {
	if s == nil {
		return nil, scriptError(ErrMalformedRecord, "cannot encode nil "+
			"script set", nil)
	}

	pkScript := []byte(s.PubkeyScript)
	sigScript := []byte(s.SigScript)
	records := []tlv.Record{
		tlv.MakePrimitiveRecord(typeScriptSetPubkeyScript, &pkScript),
		tlv.MakePrimitiveRecord(typeScriptSetSigScript, &sigScript),
	}

	s.Witness.WhenSome(func(w Witness) {
		records = append(records, witnessRecord(&w))
	})

	stream, err := tlv.NewStream(records...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := stream.Encode(&buf); err != nil {
		return nil, scriptError(ErrMalformedRecord, "unable to encode "+
			"script set", err)
	}

	return buf.Bytes(), nil
}

// DecodeScriptSet parses a script set serialized by EncodeScriptSet.
func DecodeScriptSet(b []byte) (*ScriptSet, error) {
	var (
		pkScript  []byte
		sigScript []byte
		witness   Witness
	)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeScriptSetPubkeyScript, &pkScript),
		tlv.MakePrimitiveRecord(typeScriptSetSigScript, &sigScript),
		witnessRecord(&witness),
	)
	if err != nil {
		return nil, err
	}

	parsedTypes, err := stream.DecodeWithParsedTypes(bytes.NewReader(b))
	if err != nil {
		return nil, scriptError(ErrMalformedRecord, "unable to decode "+
			"script set", err)
	}

	if _, ok := parsedTypes[typeScriptSetPubkeyScript]; !ok {
		return nil, scriptError(ErrMalformedRecord, "script set "+
			"without pubkey script", nil)
	}

	set := &ScriptSet{
		PubkeyScript: pkScript,
		SigScript:    SigScript{},
		Witness:      fn.None[Witness](),
	}
	if sigScript != nil {
		set.SigScript = sigScript
	}
	if t, ok := parsedTypes[typeScriptSetWitness]; ok && t == nil {
		set.Witness = fn.Some(witness)
	}

	return set, nil
}

func witnessRecord(w *Witness) tlv.Record {
	return tlv.MakeDynamicRecord(
		typeScriptSetWitness, w, func() uint64 {
			return recordSize(witnessEncoder, w)
		}, witnessEncoder, witnessDecoder,
	)
}

// witnessEncoder writes every stack element as a varint length followed by
// the element bytes.
func witnessEncoder(w io.Writer, val interface{}, buf *[8]byte) error {
	if v, ok := val.(*Witness); ok {
		for _, e := range *v {
			err := tlv.WriteVarInt(w, uint64(len(e)), buf)
			if err != nil {
				return err
			}
			if _, err := w.Write(e); err != nil {
				return err
			}
		}
		return nil
	}

	return tlv.NewTypeForEncodingErr(val, "scripts.Witness")
}

// witnessDecoder reads stack elements until the record is exhausted.
func witnessDecoder(r io.Reader, val interface{}, buf *[8]byte,
	l uint64) error {

	if v, ok := val.(*Witness); ok {
		// The limited reader returns EOF at the end of the record so
		// the loop stops without consuming the rest of the stream.
		record := &io.LimitedReader{R: r, N: int64(l)}

		stack := Witness{}
		for {
			size, err := tlv.ReadVarInt(record, buf)
			if err == io.EOF {
				break
			} else if err != nil {
				return err
			}

			if size > uint64(record.N) {
				return io.ErrUnexpectedEOF
			}
			e := make([]byte, size)
			if _, err := io.ReadFull(record, e); err != nil {
				return err
			}
			stack = append(stack, e)
		}

		*v = stack
		return nil
	}

	return tlv.NewTypeForDecodingErr(val, "scripts.Witness", l, l)
}

// recordSize returns the amount of bytes this TLV record will occupy when
// encoded.
func recordSize(encoder tlv.Encoder, v interface{}) uint64 {
	var (
		b   bytes.Buffer
		buf [8]byte
	)

	if err := encoder(&b, v, &buf); err != nil {
		log.Errorf("Encoding the record failed: %v", err)
	}

	return uint64(b.Len())
}
