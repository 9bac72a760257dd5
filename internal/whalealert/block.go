package whalealert

// Ownership identifies the spending authority over a transaction output.
// Two outputs belong to the same owner iff their Ownership values are equal.
// The descriptor is opaque to this package; the blockchain adapter derives it
// from the output's locking script.
type Ownership struct {
	Descriptor string
}

// Output is a transaction output: a satoshi value locked under an ownership
// descriptor.
type Output struct {
	Value uint64
	Owner Ownership
}

// Input references a previously produced output by source transaction id and
// output index. It carries no value of its own; value and ownership must be
// resolved through the referenced output.
type Input struct {
	TxID string
	Vout uint32
}

// Transaction is an immutable on-chain transaction.
type Transaction struct {
	ID      string
	Inputs  []Input
	Outputs []Output
}

// TotalOutputValue returns the sum of all output values in satoshis.
func (t Transaction) TotalOutputValue() uint64 {
	var total uint64
	for _, out := range t.Outputs {
		total += out.Value
	}
	return total
}

// LargestOutputValue returns the largest single output value in satoshis,
// or zero for a transaction without outputs.
func (t Transaction) LargestOutputValue() uint64 {
	var largest uint64
	for _, out := range t.Outputs {
		if out.Value > largest {
			largest = out.Value
		}
	}
	return largest
}

// OutputValues returns the output values in output order.
func (t Transaction) OutputValues() []uint64 {
	values := make([]uint64, len(t.Outputs))
	for i, out := range t.Outputs {
		values[i] = out.Value
	}
	return values
}

// Block is an on-chain block. The transaction at index 0 is always the
// coinbase transaction and is never scanned.
type Block struct {
	Height       uint64
	Transactions []Transaction
}
