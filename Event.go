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

package rzc

import (
	"fmt"
	"time"
)

// Event kinds reported to an optional Listener during pager encode/decode.
// Unlike the teacher's event set (which spans a concurrent multi-job
// pipeline), there is no BEFORE/AFTER_TRANSFORM split here: each page is
// processed synchronously start to finish.
const (
	EvtCompressionStart = iota
	EvtDecompressionStart
	EvtPageStart
	EvtPageEnd
	EvtCompressionEnd
	EvtDecompressionEnd
)

// Event is a single compression/decompression progress notification.
type Event struct {
	Kind      int
	PageID    int
	Size      int64
	Timestamp time.Time
}

// NewEvent creates an Event stamped with the current time if t is zero.
func NewEvent(kind, pageID int, size int64, t time.Time) *Event {
	if t.IsZero() {
		t = time.Now()
	}
	return &Event{Kind: kind, PageID: pageID, Size: size, Timestamp: t}
}

func (e *Event) String() string {
	var kind string
	switch e.Kind {
	case EvtCompressionStart:
		kind = "COMPRESSION_START"
	case EvtDecompressionStart:
		kind = "DECOMPRESSION_START"
	case EvtPageStart:
		kind = "PAGE_START"
	case EvtPageEnd:
		kind = "PAGE_END"
	case EvtCompressionEnd:
		kind = "COMPRESSION_END"
	case EvtDecompressionEnd:
		kind = "DECOMPRESSION_END"
	}
	return fmt.Sprintf("{\"type\":%q,\"page\":%d,\"size\":%d,\"time\":%d}",
		kind, e.PageID, e.Size, e.Timestamp.UnixNano()/1e6)
}

// Listener receives Events emitted by a Pager during Encode/Decode.
type Listener interface {
	ProcessEvent(evt *Event)
}
