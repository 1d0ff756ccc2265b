// Package stream reads and writes sequences of concatenated top-level
// items, as found in log files or network framing where several items
// share one buffer.
//
// # Example: Decoding
//
//	dec := stream.NewDecoder(data)
//	for {
//	    node, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    ...
//	}
//
// or with an iterator:
//
//	for node, err := range dec.Items() {
//	    ...
//	}
//
// # Example: Encoding
//
//	enc := stream.NewEncoder(w)
//	enc.Encode(1)
//	enc.Encode("two")
package stream
