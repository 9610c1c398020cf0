/*
Copyright 2024 The rzc Authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package pager splits an input buffer into fixed-size pages and
// dispatches each to a registered encoder/decoder callback, framing the
// whole sequence behind rzc.PagerSig. Grounded on the teacher's
// io/CompressedStream.go processBlock dispatch loop, narrowed from
// concurrent multi-job dispatch (out of scope per spec.md Non-goals on
// parallel encoding) to a single-threaded sequential loop.
package pager

import (
	"time"

	"github.com/nadavrot/rzc"
	"github.com/nadavrot/rzc/varint"
)

// EncodePage encodes one page; it may append any framing of its own
// choosing, but the pager needs only the byte count it appended.
type EncodePage func(page []byte) []byte

// DecodePage reads one page from the front of src and returns the
// reconstructed bytes plus the number of input bytes consumed, or
// ok=false if src does not begin with a page this callback understands.
type DecodePage func(src []byte) (page []byte, consumed int, ok bool)

// Encode splits input into pageSize-byte pages (the final page may be
// shorter), encodes each with encode, and frames the sequence as
// PAGER_SIG, u32 page_count, then per page: START_PAGE_SIG, u32
// payload_length, payload bytes. Any listeners are notified of overall
// and per-page progress, the way the teacher's CompressedStream notifies
// its Listeners around each processBlock call.
func Encode(input []byte, pageSize int, encode EncodePage, listeners ...rzc.Listener) []byte {
	if pageSize <= 0 {
		panic(rzc.ProgrammingError{Msg: "pager: page size must be positive"})
	}

	pageCount := (len(input) + pageSize - 1) / pageSize
	if len(input) == 0 {
		pageCount = 0
	}

	notify(listeners, rzc.EvtCompressionStart, -1, int64(len(input)))

	var out []byte
	out = append(out, rzc.PagerSig...)
	out = varint.PutU32(out, uint32(pageCount))

	pageID := 0
	for off := 0; off < len(input); off += pageSize {
		end := off + pageSize
		if end > len(input) {
			end = len(input)
		}

		notify(listeners, rzc.EvtPageStart, pageID, int64(end-off))
		payload := encode(input[off:end])
		notify(listeners, rzc.EvtPageEnd, pageID, int64(len(payload)))

		out = append(out, rzc.StartPageSig...)
		out = varint.PutArray(out, payload)
		pageID++
	}

	notify(listeners, rzc.EvtCompressionEnd, -1, int64(len(out)))
	return out
}

func notify(listeners []rzc.Listener, kind, pageID int, size int64) {
	if len(listeners) == 0 {
		return
	}
	evt := rzc.NewEvent(kind, pageID, size, time.Time{})
	for _, l := range listeners {
		l.ProcessEvent(evt)
	}
}

// Decode reverses Encode: it verifies PAGER_SIG, reads the declared page
// count, and decodes exactly that many pages with decode, requiring each
// one to consume its declared payload_length exactly. It fails
// (ok=false) on any signature mismatch, truncation, or a decode callback
// that does not consume its whole declared payload.
func Decode(src []byte, decode DecodePage, listeners ...rzc.Listener) (output []byte, consumed int, ok bool) {
	if !rzc.HasPrefix(src, rzc.PagerSig) {
		return nil, 0, false
	}
	rest := src[len(rzc.PagerSig):]
	total := len(rzc.PagerSig)

	pageCount, n, okU := varint.GetU32(rest)
	if !okU {
		return nil, 0, false
	}
	rest = rest[n:]
	total += n

	notify(listeners, rzc.EvtDecompressionStart, -1, int64(len(src)))

	var out []byte

	for i := uint32(0); i < pageCount; i++ {
		if !rzc.HasPrefix(rest, rzc.StartPageSig) {
			return nil, 0, false
		}
		rest = rest[len(rzc.StartPageSig):]
		total += len(rzc.StartPageSig)

		payload, n, okArr := varint.GetArray(rest)
		if !okArr {
			return nil, 0, false
		}
		rest = rest[n:]
		total += n

		notify(listeners, rzc.EvtPageStart, int(i), int64(len(payload)))
		page, pn, decOk := decode(payload)
		if !decOk || pn != len(payload) {
			return nil, 0, false
		}
		notify(listeners, rzc.EvtPageEnd, int(i), int64(len(page)))
		out = append(out, page...)
	}

	notify(listeners, rzc.EvtDecompressionEnd, -1, int64(len(out)))
	return out, total, true
}
