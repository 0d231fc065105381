package productform

// SlotKind discriminates the three states an image slot can be in.
type SlotKind int

const (
	// SlotEmpty means nothing has been selected for the slot.
	SlotEmpty SlotKind = iota
	// SlotExistingRef means the slot holds a URL already stored upstream.
	// Existing references are never re-uploaded on submit.
	SlotExistingRef
	// SlotPendingUpload means the slot holds newly selected file content
	// that will be attached to the next submission.
	SlotPendingUpload
)

// Slot is one image position: empty, an existing upstream reference, or a
// pending local upload.
type Slot struct {
	Kind     SlotKind
	URL      string
	Filename string
	Data     []byte
}

// EmptySlot returns an unset slot.
func EmptySlot() Slot {
	return Slot{Kind: SlotEmpty}
}

// ExistingRef returns a slot referencing an already-stored image URL.
func ExistingRef(url string) Slot {
	return Slot{Kind: SlotExistingRef, URL: url}
}

// PendingUpload returns a slot holding newly selected file content.
func PendingUpload(filename string, data []byte) Slot {
	return Slot{Kind: SlotPendingUpload, Filename: filename, Data: data}
}

// Empty reports whether the slot holds no image.
func (s Slot) Empty() bool {
	return s.Kind == SlotEmpty
}

// slotArray is the fixed set of image positions per color variant.
const SlotsPerColor = 4

func emptySlots() [SlotsPerColor]Slot {
	var arr [SlotsPerColor]Slot
	for i := range arr {
		arr[i] = EmptySlot()
	}
	return arr
}
