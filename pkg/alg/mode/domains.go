package mode

// Int returns the mode of an int sequence.
func Int(xs []int) (int, error) { return Mode(xs) }

// Int8 returns the mode of an int8 sequence.
func Int8(xs []int8) (int8, error) { return Mode(xs) }

// Int16 returns the mode of an int16 sequence.
func Int16(xs []int16) (int16, error) { return Mode(xs) }

// Int32 returns the mode of an int32 sequence.
func Int32(xs []int32) (int32, error) { return Mode(xs) }

// Int64 returns the mode of an int64 sequence.
func Int64(xs []int64) (int64, error) { return Mode(xs) }

// Uint returns the mode of a uint sequence.
func Uint(xs []uint) (uint, error) { return Mode(xs) }

// Uint8 returns the mode of a uint8 sequence.
func Uint8(xs []uint8) (uint8, error) { return Mode(xs) }

// Uint16 returns the mode of a uint16 sequence.
func Uint16(xs []uint16) (uint16, error) { return Mode(xs) }

// Uint32 returns the mode of a uint32 sequence.
func Uint32(xs []uint32) (uint32, error) { return Mode(xs) }

// Uint64 returns the mode of a uint64 sequence.
func Uint64(xs []uint64) (uint64, error) { return Mode(xs) }

// Float32 returns the mode of a float32 sequence.
func Float32(xs []float32) (float32, error) { return Mode(xs) }

// Float64 returns the mode of a float64 sequence.
func Float64(xs []float64) (float64, error) { return Mode(xs) }
