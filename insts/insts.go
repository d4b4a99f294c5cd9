// Package insts provides instruction encoding constants and decoding for the
// reduced MIPS-like instruction set.
//
// Every instruction is a 32-bit word whose top six bits select one of three
// encoding forms:
//   - Register form (opcode 0): four 5-bit register fields and a 6-bit
//     function code that selects the ALU operation.
//   - Jump form (opcodes 1-7): a 26-bit target field.
//   - Immediate form (opcodes 8-43): two 5-bit register fields and a 16-bit
//     immediate read from bits 21-6. The immediate shares its upper bits
//     with the register fields.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(insts.EncodeRegister(insts.FunctADD, 0, 1, 2, 0))
//	fmt.Printf("Form: %v, A: %d, B: %d, C: %d\n", inst.Form, inst.A, inst.B, inst.C)
package insts
