package charrange

const beyondMax = 0x110000

func beyondRange() rune {
	return rune(beyondMax) // want `conversion to rune is outside the valid code point range \(the result is not a valid Unicode scalar value\)`
}

func surrogateHalf() rune {
	return rune(0xD800) // want `conversion to rune is outside the valid code point range \(the result is not a valid Unicode scalar value\)`
}

func negative() rune {
	return rune(-1) // want `conversion to rune is outside the valid code point range \(the result is not a valid Unicode scalar value\)`
}

func lastValid() rune {
	return rune(0x10FFFF)
}

func plainLetter() rune {
	return rune(97)
}

func dynamic(n int) rune {
	return rune(n)
}
