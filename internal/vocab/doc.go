// Package vocab implements the vocabulary import pipeline's parsing
// stage: reading CSV rows into vocabulary entries and annotating
// readings with furigana.
//
// Furigana annotation brackets only the kanji in an expression
// (食べる + たべる -> 食[た]べる), which is the form the Japanese note
// type's Reading field expects.
package vocab
